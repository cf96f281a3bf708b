package fgsha256

// SumGeneric exposes the reference path to the external test package,
// so the equivalence property between the two paths can be asserted.
var SumGeneric = sumGeneric
