package main

import (
	"fmt"
	"os"

	"github.com/Harshitk-cp/dsfusion/internal/config"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	evidence, err := config.LoadEvidence(config.EvidenceConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(evidence).Execute(); err != nil {
		os.Exit(1)
	}
}
