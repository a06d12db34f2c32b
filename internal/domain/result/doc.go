// Package result turns per-subject mark sheets into per-student results:
// totals, grade points, GPA, letter grade, pass/fail and merit position.
//
// Everything here is a pure function over the inputs. Bad or missing data is
// defaulted, never rejected: missing marks count as zero, a subject without a
// mark sheet is marked out of 100.
//
// Grading uses the secondary-school scale:
//
//	percentage  grade  point
//	< 33        F      0.0
//	33 – 39     D      1.0
//	40 – 49     C      2.0
//	50 – 59     B      3.0
//	60 – 69     A-     3.5
//	70 – 79     A      4.0
//	≥ 80        A+     5.0
//
// Merit positions use competition ranking over total obtained marks, so
// totals of 90, 90 and 80 rank 1, 1 and 3.
package result
