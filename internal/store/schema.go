package store

// schemaVersion is the current schema version.
const schemaVersion = 1

// schema is the v1 DDL: one row per sweep run, its retained candidates,
// and the phase-acceptance verdicts recorded against it.
var schema = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at      TEXT NOT NULL,
	period          INTEGER NOT NULL,
	phase           INTEGER NOT NULL,
	letters         TEXT NOT NULL,
	enforce_anchors INTEGER NOT NULL,
	free_residues   TEXT NOT NULL,
	evaluated       INTEGER NOT NULL,
	kept            INTEGER NOT NULL,
	best_score      REAL
);

CREATE TABLE IF NOT EXISTS candidates (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id    INTEGER NOT NULL REFERENCES runs(id),
	rank      INTEGER NOT NULL,
	score     REAL NOT NULL,
	fill      TEXT NOT NULL,
	keystream TEXT NOT NULL,
	plaintext TEXT NOT NULL,
	UNIQUE(run_id, rank)
);

CREATE TABLE IF NOT EXISTS verdicts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       INTEGER NOT NULL REFERENCES runs(id),
	phase_offset INTEGER NOT NULL,
	accepted     INTEGER NOT NULL,
	reason       TEXT NOT NULL,
	metrics      TEXT NOT NULL
);
`
