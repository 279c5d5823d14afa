package refer

import (
	"errors"
	"fmt"

	"github.com/hupe1980/refer/dataset"
)

var (
	// ErrDatasetNotFound matches *DatasetNotFoundError.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrRecordNotFound matches *RecordLookupError.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidSplit matches *InvalidSplitError.
	ErrInvalidSplit = errors.New("invalid split")
	// ErrDuplicateID matches *DuplicateIDError.
	ErrDuplicateID = errors.New("duplicate id")
)

// Mapping names used in RecordLookupError.
const (
	MappingRefs         = "refs"
	MappingAnns         = "anns"
	MappingImgs         = "imgs"
	MappingCats         = "cats"
	MappingSents        = "sents"
	MappingAnnToRef     = "ann_to_ref"
	MappingSentToRef    = "sent_to_ref"
	MappingSentToTokens = "sent_to_tokens"
	MappingRefToAnn     = "ref_to_ann"
)

// DatasetNotFoundError indicates a dataset name outside the registry, or a
// registered dataset whose record files are missing from the store.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DatasetNotFoundError struct {
	Name  string
	cause error
}

func (e *DatasetNotFoundError) Error() string {
	if e.cause != nil && !errors.Is(e.cause, dataset.ErrUnknownDataset) {
		return fmt.Sprintf("dataset not found: %q: %v", e.Name, e.cause)
	}
	return fmt.Sprintf("dataset not found: %q", e.Name)
}

func (e *DatasetNotFoundError) Unwrap() error { return e.cause }

// Is reports whether target is ErrDatasetNotFound.
func (e *DatasetNotFoundError) Is(target error) bool { return target == ErrDatasetNotFound }

// RecordLookupError indicates an id absent from one of the index mappings.
type RecordLookupError struct {
	// Mapping names the mapping that was consulted, e.g. "anns".
	Mapping string
	ID      int64
}

func (e *RecordLookupError) Error() string {
	return fmt.Sprintf("record not found: id %d in %s", e.ID, e.Mapping)
}

// Is reports whether target is ErrRecordNotFound.
func (e *RecordLookupError) Is(target error) bool { return target == ErrRecordNotFound }

// InvalidSplitError indicates an unrecognized split query.
type InvalidSplitError struct {
	Split string
}

func (e *InvalidSplitError) Error() string {
	return fmt.Sprintf("invalid split: %q", e.Split)
}

// Is reports whether target is ErrInvalidSplit.
func (e *InvalidSplitError) Is(target error) bool { return target == ErrInvalidSplit }

// DuplicateIDError indicates two records sharing an id within one id space.
type DuplicateIDError struct {
	// Kind is the id space, e.g. "ref".
	Kind string
	ID   int64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id: %s %d", e.Kind, e.ID)
}

// Is reports whether target is ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

func lookupErr[T ~int64](mapping string, id T) error {
	return &RecordLookupError{Mapping: mapping, ID: int64(id)}
}

func translateError(name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dataset.ErrUnknownDataset) || dataset.IsNotFound(err) {
		return &DatasetNotFoundError{Name: name, cause: err}
	}
	return err
}
