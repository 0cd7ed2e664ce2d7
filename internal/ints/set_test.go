package ints

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type SetSuite struct{}

func TestSet(t *testing.T) {
	suite.RunTests(t, &SetSuite{})
}

func (SetSuite) TestEmpty(t *testing.T) {
	var s Set
	expect.True(t, s.IsEmpty())
	expect.Equal(t, 0, s.Len())
	expect.False(t, s.Contains(0))
	expect.False(t, s.Contains(-1))
	expect.Equal(t, []int{}, s.ToSlice())
}

func (SetSuite) TestAdd(t *testing.T) {
	s := NewSet(130, 3, 64, 3)
	expect.Equal(t, 3, s.Len())
	expect.True(t, s.Contains(3))
	expect.True(t, s.Contains(64))
	expect.True(t, s.Contains(130))
	expect.False(t, s.Contains(63))
	expect.False(t, s.Contains(1000))
	expect.Equal(t, []int{3, 64, 130}, s.ToSlice())
}

func (SetSuite) TestMerge(t *testing.T) {
	s := NewSet(1, 2)
	expect.False(t, s.Merge(NewSet(2)))
	expect.False(t, s.Merge(nil))
	expect.True(t, s.Merge(NewSet(2, 200)))
	expect.Equal(t, []int{1, 2, 200}, s.ToSlice())
	expect.False(t, s.Merge(s.Copy()))
}

func (SetSuite) TestCopy(t *testing.T) {
	s := NewSet(5)
	c := s.Copy()
	c.Add(6)
	expect.False(t, s.Contains(6))
	expect.True(t, c.Contains(5))
}
