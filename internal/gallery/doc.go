// Package gallery implements the decoder side of a password-gated gallery.
//
// A Loader first decrypts a probe image to check the visitor's passphrase and only then
// fetches, decrypts and renders every gallery photo into the slots of a Display.
// Each photo is handled independently: one failure never affects its siblings.
package gallery
