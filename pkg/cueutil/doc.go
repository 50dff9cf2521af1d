// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used by the bundle
// descriptor and CLI configuration packages:
//
//  1. Compile the embedded schema
//  2. Compile user data (CUE or JSON) and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed info_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Info](
//	    schemaBytes,
//	    infoJSON,
//	    "#Info",
//	    cueutil.WithFilename("Info.json"),
//	    cueutil.WithFormat(cueutil.FormatJSON),
//	)
//	if err != nil {
//	    return nil, err  // *DecodeError with one Issue per offending path
//	}
//	return result.Value, nil
package cueutil
