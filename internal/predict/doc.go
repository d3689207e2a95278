// Package predict serves weekly sales estimates from a pre-trained model.
//
// Models are read once at startup from a YAML (or JSON) artifact that names
// the features the model was trained on. Two kinds are supported:
//
//	kind: linear   intercept plus one coefficient per feature
//	kind: forest   the mean of a set of regression trees
//
// Adapter.Predict refuses any feature set that differs from the declared
// names, reporting both the missing and the unexpected ones. Nothing is
// retrained or persisted.
package predict
