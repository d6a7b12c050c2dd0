/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config_test

import (
	"testing"

	"dirpx.dev/cfx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.TypeKey != config.DefaultTypeKey {
		t.Fatalf("TypeKey = %q, want %q", got.TypeKey, config.DefaultTypeKey)
	}
	if got.RootDefinition != config.DefaultRootDefinition {
		t.Fatalf("RootDefinition = %q, want %q", got.RootDefinition, config.DefaultRootDefinition)
	}
	if got.SchemaDialect != config.DefaultSchemaDialect {
		t.Fatalf("SchemaDialect = %q, want %q", got.SchemaDialect, config.DefaultSchemaDialect)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithTypeKey(t *testing.T) {
	c := config.NewConfig(config.WithTypeKey("kind"))
	if c.TypeKey != "kind" {
		t.Fatalf("TypeKey = %q, want kind", c.TypeKey)
	}

	c2 := config.NewConfig(config.WithTypeKey(""))
	if c2.TypeKey != config.DefaultTypeKey {
		t.Fatalf("TypeKey = %q, want default %q", c2.TypeKey, config.DefaultTypeKey)
	}
}

func TestWithRootDefinition(t *testing.T) {
	c := config.NewConfig(config.WithRootDefinition("Component"))
	if c.RootDefinition != "Component" {
		t.Fatalf("RootDefinition = %q, want Component", c.RootDefinition)
	}

	c2 := config.NewConfig(config.WithRootDefinition(""))
	if c2.RootDefinition != config.DefaultRootDefinition {
		t.Fatalf("RootDefinition = %q, want default %q", c2.RootDefinition, config.DefaultRootDefinition)
	}
}

func TestWithSchemaDialect(t *testing.T) {
	const dialect = "https://json-schema.org/draft/2020-12/schema"
	c := config.NewConfig(config.WithSchemaDialect(dialect))
	if c.SchemaDialect != dialect {
		t.Fatalf("SchemaDialect = %q, want %q", c.SchemaDialect, dialect)
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_NonPositive_ResetsToDefault(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxUnwrap(n))
		if c.MaxUnwrap != config.DefaultMaxUnwrap {
			t.Fatalf("MaxUnwrap(%d) = %d, want default %d", n, c.MaxUnwrap, config.DefaultMaxUnwrap)
		}
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithTypeKey("kind"),
		config.WithTypeKey("class"),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
	)

	if c.TypeKey != "class" {
		t.Errorf("TypeKey = %q, want class (last option wins)", c.TypeKey)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
}
