//go:build !darwin

package main

import (
	"log"

	"github.com/shelepuginivan/shieldbar/sni"
)

func newToolkit() (toolkit, func(), error) {
	tk, err := sni.Connect()
	if err != nil {
		return nil, nil, err
	}

	return tk, func() {
		if err := tk.Close(); err != nil {
			log.Printf("Failed to close session bus connection: %v", err)
		}
	}, nil
}
