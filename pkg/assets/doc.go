/*
Package assets renders the site's favicon suite, share image, logo and web manifest.

🎯 Purpose:
- Delta triangle icons as PNG at every configured size
- favicon.ico with opaque 16, 32 and 48 px entries
- og-default.png (1200x630) and logo.png (512x512)
- manifest.json listing the 192 and 512 px icons

Encoding is deterministic, so a file is only rewritten when its bytes change.
*/
package assets
