// Package linkverify checks that every internal link of a generated glossary
// site resolves to a page of the same site.
//
// Pages are parsed with golang.org/x/net/html. Hrefs are compared literally
// against page names because generated pages do not percent-encode term
// names.
package linkverify
