// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"reflect"
	"testing"
)

func TestParsePlainText(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("hello world")
	if result.IsCommand {
		t.Error("plain text reported as command")
	}
}

func TestParseKnownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/export notes.md")
	if !result.IsCommand {
		t.Fatal("not recognized as command")
	}
	if result.Command == nil || result.Command.Name != CmdExport {
		t.Errorf("Command = %+v", result.Command)
	}
	if !reflect.DeepEqual(result.Args, []string{"notes.md"}) {
		t.Errorf("Args = %v", result.Args)
	}
	if result.RawArgs != "notes.md" {
		t.Errorf("RawArgs = %q", result.RawArgs)
	}
}

func TestParseAlias(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/n")
	if result.Command == nil || result.Command.Name != CmdNew {
		t.Errorf("alias /n resolved to %+v", result.Command)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/frobnicate")
	if !result.IsCommand {
		t.Error("slash input not reported as command")
	}
	if result.Command != nil {
		t.Errorf("Command = %+v, want nil", result.Command)
	}
	if result.CommandName != "/frobnicate" {
		t.Errorf("CommandName = %q", result.CommandName)
	}
}

func TestParseQuotedArgs(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse(`/export "my notes.md"`)
	if !reflect.DeepEqual(result.Args, []string{"my notes.md"}) {
		t.Errorf("Args = %v", result.Args)
	}

	result = p.Parse(`/export 'other file.json'`)
	if !reflect.DeepEqual(result.Args, []string{"other file.json"}) {
		t.Errorf("Args = %v", result.Args)
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	list := r.List()
	if len(list) == 0 {
		t.Fatal("no builtins registered")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("list not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}
