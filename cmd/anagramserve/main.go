// Copyright 2025 The AnagramServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagram server and its interactive CLI.

AnagramServe loads a plain text word list (one word per line) into a letter
trie and answers queries with every phrase of dictionary words that uses
exactly the letters of the query.

# Usage

Serve HTTP on the configured address (default :8080):

	anagramserve serve --dict words.txt

	curl 'localhost:8080/anagram?q=listen'
	["listen","silent","enlist","set nil","nil set"]

Serve msgpack requests over stdin/stdout for editors and scripts:

	anagramserve ipc

Try queries interactively:

	anagramserve cli --min 2

# Configuration

The config file is created with defaults at [UserConfigDir]/anagramserve/config.toml
when missing. YAML and JSON files are read by extension, including the flat
keys of older config.json files (dictionary_txt, minimum_word_length,
max_allowed_word_length, listen_address, listen_port).

	[server]
	listen_port = 8080
	max_allowed_word_length = 20

	[dict]
	path = "words.txt"
	minimum_word_length = 3

	[cache]
	backend = "memory"

Flags override the file: --dict, --min, --config and -d for debug logging.
*/
package main

func main() {
	Execute()
}
