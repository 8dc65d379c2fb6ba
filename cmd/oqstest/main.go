package main

import (
	"fmt"
	"os"

	"pqcprov/cmd/oqstest/cmd"
	"pqcprov/crypto/pqc/dilithium"
)

func init() {
	if _, err := dilithium.ByName(dilithium.ModeDilithium2); err != nil {
		panic("security: no PQC backend linked: " + err.Error())
	}
	name := dilithium.ActiveBackend()
	switch name {
	case dilithium.BackendCircl:
		// allowed backends
	default:
		panic("security: invalid PQC backend linked: " + name)
	}
}

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
