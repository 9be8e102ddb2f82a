// Package labels archives energy label documents into object storage.
//
// The archiver walks mirrored products, downloads each product's energy label
// or product fiche from the upstream API and stores it under a deterministic
// object key. Already archived documents are skipped, so a run can be
// repeated or resumed at any time without re-downloading anything.
package labels
