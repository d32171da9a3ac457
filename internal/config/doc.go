// Package config loads the YAML configuration of the command-line tool:
// threshold expressions used for classification and the levels written
// by the quantization transform.
//
// Every key is optional and falls back to its default:
//
//	thresholds:
//	  starvation: "x <= 0.2"
//	  infection: "x >= 0.8"
//	  violation: "x > 0.06"
//	levels:
//	  control: 2
//	  other: 1
//	  starved: 0
//
// Unknown keys are rejected so that typos do not silently select defaults.
package config
