package config

// Template is the commented starter file written by "gedkit config init".
const Template = `# gedkit configuration
# See: https://github.com/yaklabco/gedkit

# How bytes that are invalid in the file's character set are handled:
# strict, replace or ignore.
decode_policy: strict

# Reject files whose header does not declare CHAR.
# require_charset: false

# Force a codec instead of the declared one, e.g. utf-8 or ansel.
# encoding: ""

# Sort key for people listings:
# surname_given, given_surname, maiden_given or given_maiden.
name_order: surname_given

# debug, info, warn or error.
log_level: info

# Files "gedkit check" reads in parallel; 0 means one per CPU.
# jobs: 0

output:
  # text, json, table or html.
  format: text
  # auto, always or never.
  color: auto

# export:
#   database: family.db
`
