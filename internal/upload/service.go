package upload

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ServiceID identifies an upload destination in menus and on the command line
type ServiceID int

const (
	Pixeldrain ServiceID = iota + 1
	GoFile
	Bashupload
	Devuploads
	FileIO
	Uguu
	ZeroXZero
	S3
)

// Descriptor holds static display and protocol metadata for one destination
type Descriptor struct {
	ID                 ServiceID `yaml:"id"`
	Key                string    `yaml:"key"`
	Name               string    `yaml:"name"`
	Tag                string    `yaml:"tag"`
	RequiresCredential bool      `yaml:"requires_credential"`
	CredentialLabel    string    `yaml:"credential_label"`
	RejectsEmptyFile   bool      `yaml:"rejects_empty_file"`
	DiscoversServer    bool      `yaml:"discovers_server"`
	Note               string    `yaml:"note"`
	Banner             string    `yaml:"banner"`
}

// MenuLabel returns the label shown in the destination menu, e.g. "Pixeldrain.com (Requires API)"
func (d Descriptor) MenuLabel() string {
	switch {
	case d.RequiresCredential:
		return d.Name + " (Requires API)"
	case d.Tag != "":
		return d.Name + " (" + d.Tag + ")"
	default:
		return d.Name
	}
}

//go:embed services.yaml
var catalogYAML []byte

type catalogFile struct {
	Services []Descriptor `yaml:"services"`
}

var (
	catalogOnce sync.Once
	catalog     []Descriptor
	catalogErr  error
)

func loadCatalog() ([]Descriptor, error) {
	catalogOnce.Do(func() {
		var f catalogFile
		if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
			catalogErr = fmt.Errorf("failed to parse service catalog: %w", err)
			return
		}
		for i, d := range f.Services {
			if int(d.ID) != i+1 {
				catalogErr = fmt.Errorf("service catalog entry %d has id %d", i+1, d.ID)
				return
			}
		}
		catalog = f.Services
	})
	return catalog, catalogErr
}

// Services returns all destinations ordered by ID
func Services() []Descriptor {
	services, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return append([]Descriptor(nil), services...)
}

// Lookup returns the descriptor for id
func Lookup(id ServiceID) (Descriptor, bool) {
	return lo.Find(Services(), func(d Descriptor) bool { return d.ID == id })
}

// LookupKey returns the descriptor whose key matches name, case-insensitively
func LookupKey(name string) (Descriptor, bool) {
	return lo.Find(Services(), func(d Descriptor) bool { return strings.EqualFold(d.Key, name) })
}

// Valid reports whether id names a known destination
func (id ServiceID) Valid() bool {
	_, ok := Lookup(id)
	return ok
}

func (id ServiceID) String() string {
	if d, ok := Lookup(id); ok {
		return d.Key
	}
	return fmt.Sprintf("service(%d)", int(id))
}
