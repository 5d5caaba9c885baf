package perceptron

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive learning rate or epoch budget.
	ErrInvalidConfig = errors.New("perceptron: invalid configuration")
	// ErrEmptyDataset indicates training or scoring with zero samples.
	ErrEmptyDataset = errors.New("perceptron: dataset is empty")
	// ErrShapeMismatch indicates feature vectors of inconsistent length.
	ErrShapeMismatch = errors.New("perceptron: feature dimension mismatch")
	// ErrInvalidLabel indicates a label outside {0, 1}.
	ErrInvalidLabel = errors.New("perceptron: label must be 0 or 1")
	// ErrNotTrained indicates use of a model before Train.
	ErrNotTrained = errors.New("perceptron: model is not trained")
)
