// Package content discovers the pages and static files of a documentation
// source directory and maps them to the site paths a generator serves.
//
// The resulting Index is what dangling-link checks resolve against.
package content
