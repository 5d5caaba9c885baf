// Package perceptron implements an online binary perceptron.
//
// A Model owns its weights, bias and training history; nothing is shared
// between models, so independent models may be trained concurrently as long
// as each one gets its own random source.
//
// Training:
//
//   - Weights and bias start uniform in [-InitRange, InitRange].
//   - Samples are visited in dataset order, never shuffled.
//   - A sample is predicted 1 when dot(w, x) + b >= 0, else 0. The boundary
//     is inclusive at zero.
//   - On a mistake, w[j] += rate * err * x[j] and b += rate * err, where
//     err = label - prediction.
//   - Training stops at the first epoch without mistakes (converged) or
//     after MaxEpochs (not converged, which is not an error).
//
// Errors:
//
//   - ErrInvalidConfig: learning rate <= 0 or MaxEpochs < 1.
//   - ErrEmptyDataset: Train or Accuracy with no samples.
//   - ErrShapeMismatch: samples of differing length, or a feature vector
//     whose length differs from the trained weights.
//   - ErrInvalidLabel: a training label other than 0 or 1.
//   - ErrNotTrained: Predict or Accuracy before Train.
package perceptron
