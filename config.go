package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const projectFile = "minilang.yml"

type project struct {
	Package  string `yaml:"Package"`
	Entry    string `yaml:"Entry"`
	LogLevel string `yaml:"LogLevel,omitempty"`

	dir string
}

// loadProject reads a project file. A missing file is not an error; it
// yields a nil project.
func loadProject(path string) (*project, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var doc project
	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	doc.dir = filepath.Dir(path)

	return &doc, nil
}

// entryPath resolves Entry relative to the directory of the project file.
func (p *project) entryPath() string {
	if p.Entry == "" || filepath.IsAbs(p.Entry) {
		return p.Entry
	}
	return filepath.Join(p.dir, p.Entry)
}

func writeProject(path string, p project) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, out, 0644)
}
