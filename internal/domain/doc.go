// Package domain defines the Document value model shared by the store's
// packages: canonical values, deep copies, structural equality and the error
// kinds every layer reports.
package domain
