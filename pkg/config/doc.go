/*
Package config manages configuration parsing and validation for sitefix.

	            +-------------+
	            |   Config    |
	            |   (Jobs)    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+---+ +-----+-----+
	|   YAML    | |  HCL  | |   JSON    |
	|  Parser   | |Parser | |  Parser   |
	+-----------+ +-------+ +-----------+

🎯 Purpose:
- Loads jobs (root, filters, rules) from YAML, HCL or JSON
- Reproduces the built-in presets: favicons, clean-urls, head, footer
- Holds asset generation settings

🔄 Flow:
1. Load picks a parser by file extension
2. The parser decodes strictly (unknown fields are errors)
3. Validate fills defaults, expands presets and compiles every rule
4. Job.Operation hands a ready pipeline to the runner

⚡ Key Responsibilities:
- Rule payloads are values, never package state the rules reach into
- Relative roots resolve against the config file's directory
- Invalid regexps and unknown rule types fail before any file is touched

🔍 Example:

	job "clean" {
	  root      = "Website"
	  recursive = true

	  rule "strip_suffix" {
	    host = site_host
	  }
	}

	job "head" {
	  preset = "head"
	}
*/
package config
