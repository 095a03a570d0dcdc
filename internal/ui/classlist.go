package ui

import "strings"

// ClassList is an ordered set of visual state flags, the terminal stand-in
// for an element's CSS class list.
type ClassList struct {
	names []string
}

func NewClassList(names ...string) *ClassList {
	c := &ClassList{}
	c.Add(names...)
	return c
}

func (c *ClassList) Contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

func (c *ClassList) Add(names ...string) {
	for _, n := range names {
		if n != "" && !c.Contains(n) {
			c.names = append(c.names, n)
		}
	}
}

func (c *ClassList) Remove(names ...string) {
	for _, n := range names {
		for i, have := range c.names {
			if have == n {
				c.names = append(c.names[:i], c.names[i+1:]...)
				break
			}
		}
	}
}

// Toggle sets name on or off.
func (c *ClassList) Toggle(name string, on bool) {
	if on {
		c.Add(name)
	} else {
		c.Remove(name)
	}
}

func (c *ClassList) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *ClassList) String() string { return strings.Join(c.names, " ") }
