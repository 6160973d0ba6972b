// Package seedcompile implements the three-stage Seed DSL compiler:
// preprocessing (function/import/config collection), type inference, and
// lowering to the pkg/command event list the simulation interpreter runs.
// It also resolves snippet composition (!include/!share/!use/!callback),
// compile-time directives (!if/!repeat/!random_*/!state/!timer/!item_data/
// !preplace), and the late-bound !zone_of/!item_on/!count_in_zone
// placeholders in a post-placement pass.
package seedcompile
