// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sumfmt reads and writes the intermediate summary format.
//
// A summary file is a comma-separated grid with one column per
// summarized metric of each run, preceded by a label column:
//
//	Test name,fwd_co_0_1024x768_2_400_29,,
//	Data type,Frametime,GpuUsage,
//	,,,
//	Average,16.5,40,
//	,,,
//	Minimum,15,38,
//	1st Quartile,16,39,
//	Median,16.5,40,
//	3rd Quartile,17,41,
//	Maximum,18,42,
//	,,,
//	Data,16.5,40,
//	,17,41,
//
// Row 0 holds the run name on the first column of each run, row 3
// the average, rows 5 through 9 the quartiles and rows 11 onward the
// cleaned samples in capture order. A column's samples end at its
// first blank cell.
package sumfmt

// Row indexes of the summary layout.
const (
	rowName       = 0
	rowDataType   = 1
	rowAverage    = 3
	rowMin        = 5 // rows rowMin..rowMin+4 hold quartiles 0..4
	rowData       = 11
	minRows       = rowData + 1
	labelTestName = "Test name"
)

var labels = []string{
	labelTestName, "Data type", "", "Average", "",
	"Minimum", "1st Quartile", "Median", "3rd Quartile", "Maximum",
	"", "Data",
}
