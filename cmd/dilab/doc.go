// Command dilab runs the wiring labs from one composition root.
//
//	dilab order [--definitions FILE]
//	dilab notify email|sms MESSAGE
//	dilab user register ID NAME SECRET
//	dilab hello
//
// Every command accepts --config FILE (YAML). Any key can be overridden from
// the environment with the DILAB_ prefix, for example
// DILAB_USER_DB_TYPE=PostgreSQL or DILAB_LOG_LEVEL=debug.
package main
