// Package fixer decides which repair rules apply to a commercial record and
// applies them.
//
// Classification is an exact match on the record's asset type. Cinema
// commercials get their alternative title moved into the description; TV 2
// commercials additionally get the channel publisher entries. Records of any
// other asset type are left alone.
package fixer
