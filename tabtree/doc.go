// Package tabtree turns a flat candidate feed into the two-level tab tree
// shown by the directory: category tabs holding role tabs holding candidates.
//
// Everything here is a pure function of the candidate list and an immutable
// Config, so building the tree twice from the same inputs yields the same
// ids, labels and active flags.
package tabtree
