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

// Package schema reads class and relationship declarations from YAML and
// turns them into resource classes declared with the engine.
//
// A file lists model classes, collection classes and relationships:
//
//	classes:
//	  - name: Country
//	    id_attribute: name
//	    url_root: /countries
//	  - name: City
//	    id_attribute: name
//	collections:
//	  - name: Cities
//	    model: City
//	relationships:
//	  - class: Country
//	    key: cities
//	    type: Cities
//	    url: /cities
//
// Class and collection names share one namespace; extends refers to a class
// (or collection) defined in the same file.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("schema: duplicate name")
	// ErrUnknownName is returned for a reference to an undefined name.
	ErrUnknownName = errors.New("schema: unknown name")
	// ErrCycle is returned when extends forms a cycle.
	ErrCycle = errors.New("schema: extends cycle")
	// ErrInvalid is returned for a definition missing a required field.
	ErrInvalid = errors.New("schema: invalid definition")
)

// File is the YAML document.
type File struct {
	Version       string            `yaml:"version"`
	Classes       []ClassDef        `yaml:"classes"`
	Collections   []CollectionDef   `yaml:"collections,omitempty"`
	Relationships []RelationshipDef `yaml:"relationships,omitempty"`
}

// ClassDef defines a model class.
type ClassDef struct {
	Name         string         `yaml:"name"`
	Extends      string         `yaml:"extends,omitempty"`
	IDAttribute  string         `yaml:"id_attribute,omitempty"`
	URLRoot      string         `yaml:"url_root,omitempty"`
	InferURLRoot bool           `yaml:"infer_url_root,omitempty"`
	Defaults     map[string]any `yaml:"defaults,omitempty"`
}

// CollectionDef defines a collection class.
type CollectionDef struct {
	Name     string `yaml:"name"`
	Extends  string `yaml:"extends,omitempty"`
	Model    string `yaml:"model,omitempty"`
	URL      string `yaml:"url,omitempty"`
	InferURL bool   `yaml:"infer_url,omitempty"`
}

// RelationshipDef declares one key of a class.
type RelationshipDef struct {
	Class string `yaml:"class"`
	Key   string `yaml:"key"`
	Type  string `yaml:"type"`
	Reset bool   `yaml:"reset,omitempty"`
	URL   string `yaml:"url,omitempty"`
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("schema: parse: %w", err)
	}
	if f.Version == "" {
		f.Version = "1"
	}
	return &f, nil
}

// Marshal serializes f to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
