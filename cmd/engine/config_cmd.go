package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"truthrecruit-engine/internal/config"
)

type ConfigCmd struct {
	Validate ValidateConfigCmd `cmd:"" help:"Validate config.yml and list problems."`
	Path     PathConfigCmd     `cmd:"" help:"Print the config file path."`
}

type ValidateConfigCmd struct{}

type PathConfigCmd struct{}

func (c *ValidateConfigCmd) Run(ctx *Context) error {
	_, vr := config.NormalizeAndValidate(ctx.Config)
	for _, w := range vr.Warnings {
		fmt.Fprintf(ctx.Out, "warning: %s\n", w)
	}
	for _, e := range vr.Errors {
		fmt.Fprintf(ctx.Out, "error: %s\n", e)
	}
	if !vr.OK() {
		return errors.New("config is invalid")
	}
	_, err := fmt.Fprintf(ctx.Out, "%s is valid\n", ctx.CfgPath)
	return err
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	abs, err := filepath.Abs(ctx.CfgPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, abs)
	return err
}
