package doctor

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check in the mockery expecter style.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck creates a MockCheck whose expectations are asserted at cleanup.
func NewMockCheck(t *testing.T) *MockCheck {
	m := &MockCheck{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockCheckExpecter records expectations on a MockCheck.
type MockCheckExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter for m.
func (m *MockCheck) EXPECT() *MockCheckExpecter {
	return &MockCheckExpecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run() *CheckResult {
	ret := m.Called()
	r, _ := ret.Get(0).(*CheckResult)
	return r
}

// Name expects a call to Name.
func (e *MockCheckExpecter) Name() *mock.Call {
	return e.mock.On("Name")
}

// Category expects a call to Category.
func (e *MockCheckExpecter) Category() *mock.Call {
	return e.mock.On("Category")
}

// Run expects a call to Run.
func (e *MockCheckExpecter) Run() *mock.Call {
	return e.mock.On("Run")
}

var _ Check = (*MockCheck)(nil)
