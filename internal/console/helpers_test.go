package console_test

import "codeberg.org/mutker/deepcoolctl/internal/frame"

type transmitFunc func(int, frame.DisplayMode) error

func (f transmitFunc) Send(v int, m frame.DisplayMode) error { return f(v, m) }

func sendCounter(n *int) transmitFunc {
	return func(int, frame.DisplayMode) error {
		*n++
		return nil
	}
}
