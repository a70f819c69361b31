package main

import (
	_ "embed"
	"os"
	"text/template"
)

//go:embed rgpio.service
var rgpioServiceEmbed string

type RgpioServiceParams struct {
	BinaryPath string
	User       string
}

func SystemdServiceFile() {
	tmpl := template.New("rgpio.service")
	tmpl, err := tmpl.Parse(rgpioServiceEmbed)
	if err != nil {
		panic(err)
	}

	path, err := os.Executable()
	if err != nil {
		panic(err)
	}

	params := RgpioServiceParams{
		BinaryPath: path,
		User:       "pi",
	}

	err = tmpl.Execute(os.Stdout, params)
	if err != nil {
		panic(err)
	}
}
