//go:build darwin

package main

import "github.com/shelepuginivan/shieldbar/cocoa"

func newToolkit() (toolkit, func(), error) {
	return cocoa.New(), func() {}, nil
}
