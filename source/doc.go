// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package source provides abstractions for loading recipes into the store.
//
// This package defines the Loader interface for reading recipes from
// external sources. It keeps the ingestion pipeline decoupled from any
// particular file format or origin.
//
// # Implementation Packages
//
// The source package includes two implementation sub-packages:
//
//   - source/file: production implementation reading JSON and YAML files
//   - source/static: an in-memory implementation for tests and seeding
//
// Public constructors (file.NewLoader) return the Loader INTERFACE to
// enforce abstraction. Test utility constructors (static.NewLoader) return
// CONCRETE types to enable assertions and behavior injection.
//
// # Usage Example
//
//	cfg := source.NewConfig("recipes.yaml")
//	loader, err := file.NewLoader(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer loader.Close()
//
//	recipes, err := loader.Load(ctx)
package source
