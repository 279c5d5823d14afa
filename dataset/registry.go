package dataset

import (
	"errors"
	"fmt"
	"path"
	"sort"
)

// ErrUnknownDataset is returned for names outside the fixed registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// Info describes one registered dataset.
type Info struct {
	// Name is the registry key, e.g. "refcoco+".
	Name string
	// ImageDir is the image directory relative to the data root.
	ImageDir string
	// SplitBys lists the split schemes published for the dataset.
	SplitBys []string
}

const (
	mscocoImages = "images/mscoco/images/train2014"
	saiaprImages = "images/saiapr_tc-12"
)

var registry = map[string]Info{
	"refcoco":  {Name: "refcoco", ImageDir: mscocoImages, SplitBys: []string{"unc", "google"}},
	"refcoco+": {Name: "refcoco+", ImageDir: mscocoImages, SplitBys: []string{"unc"}},
	"refcocog": {Name: "refcocog", ImageDir: mscocoImages, SplitBys: []string{"umd", "google"}},
	"refclef":  {Name: "refclef", ImageDir: saiaprImages, SplitBys: []string{"unc", "berkeley"}},
}

// Lookup returns the registry entry for name.
func Lookup(name string) (Info, error) {
	info, ok := registry[name]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	info.SplitBys = append([]string(nil), info.SplitBys...)
	return info, nil
}

// Names returns the registered dataset names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RefsFile returns the uncompressed refs file name for a dataset and split scheme.
func RefsFile(name, splitBy string) string {
	return path.Join(name, "refs("+splitBy+").json")
}

// InstancesFile returns the uncompressed instances file name for a dataset.
func InstancesFile(name string) string {
	return path.Join(name, "instances.json")
}
