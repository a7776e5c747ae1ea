// Package afq translates a flat user parameter mapping into the keyword
// arguments of a pyAFQ session.
//
// The accepted arguments are described by an argument schema grouped into
// sections. Most arguments are copied to the top level of the result when the
// user sets them. A few arguments stand for a whole parameter group
// (clean_params, segmentation_params, tracking_params); their sub-arguments
// are collected into that group instead. Parameters that qsirecon controls
// itself, such as the BIDS paths, are always dropped.
package afq
