// Package calculation forwards the legal calculator forms to the
// calculation API and returns its answers untouched.
//
// Every form is checked locally first, with the same required fields and
// ranges the mobile screens enforce. The server does all the arithmetic;
// nothing here recomputes or second-guesses a result.
//
// Amounts are typed the Turkish way, with dots grouping thousands and a
// comma before the decimals. MaskTRY reformats input as it is typed,
// ParseTRY reads it back and FormatTRY renders a number.
package calculation
