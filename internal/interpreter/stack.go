package interpreter

// StackLimit is the maximum call depth.
const StackLimit = 16

// Stack holds the return addresses of the active subroutine calls.
// The pointer counts the occupied slots.
type Stack struct {
	data [StackLimit]uint16
	sp   int
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if s.Full() {
		return ErrStackOverflow
	}
	s.data[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.data[s.sp], nil
}

// Peek returns the most recent return address without removing it.
func (s *Stack) Peek() (uint16, bool) {
	if s.Empty() {
		return 0, false
	}
	return s.data[s.sp-1], true
}

// Len returns the stack pointer.
func (s *Stack) Len() int {
	return s.sp
}

func (s *Stack) Empty() bool {
	return s.sp == 0
}

func (s *Stack) Full() bool {
	return s.sp == StackLimit
}

// Reset empties the stack.
func (s *Stack) Reset() {
	clear(s.data[:])
	s.sp = 0
}
