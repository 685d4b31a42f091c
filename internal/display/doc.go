// Package display provides user-facing terminal output for sidebarsync:
// warnings about the outline and an ASCII preview of the scanned tree.
//
// Warnings:
//
//	display.WarnStaleLinks(report.Result.Stale).Display(os.Stderr)
//
// Tree preview, with entries missing from the outline marked "+ ":
//
//	fmt.Print(display.RenderTree("notes", tree, missing))
package display
