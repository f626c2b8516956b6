package member

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/markdingo/zeronsd/zone"
)

// File reads members from a YAML file on every call so edits are picked up by the next
// sync pass.
//
//	members:
//	  - id: 8056c2e21c
//	    name: laptop
//	    addresses: [10.147.17.5/24, "fd00::1"]
type File struct {
	path string
}

type yamlMembers struct {
	Members []yamlMember `yaml:"members"`
}

type yamlMember struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Addresses []string `yaml:"addresses"`
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (t *File) String() string {
	return "file:" + t.path
}

func (t *File) Members(ctx context.Context) ([]zone.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, err
	}

	return ParseYAML(data, t.path)
}

// ParseYAML decodes the members file format. Every member must have an id.
func ParseYAML(data []byte, source string) ([]zone.Member, error) {
	var ym yamlMembers
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	members := make([]zone.Member, 0, len(ym.Members))
	for ix, m := range ym.Members {
		if len(m.ID) == 0 {
			return nil, fmt.Errorf("%s: member %d has no id", source, ix+1)
		}
		members = append(members, zone.Member{ID: m.ID, Name: m.Name, Addresses: m.Addresses})
	}

	return members, nil
}
