package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS stamps (
    stamp_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    module_name     TEXT NOT NULL,
    label           TEXT NOT NULL,
    version         TEXT NOT NULL,
    major           TEXT,
    minor           TEXT,
    commits         TEXT,
    revision        INTEGER DEFAULT 0,
    hash1           TEXT,
    hash2           TEXT,
    dirty_state     TEXT,
    submodule_count INTEGER DEFAULT 0,
    header_path     TEXT NOT NULL,
    header_changed  INTEGER NOT NULL DEFAULT 0,
    cli_version     TEXT,
    stamped_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_stamps_module_time
    ON stamps(module_name, stamped_at);
CREATE INDEX IF NOT EXISTS idx_stamps_time
    ON stamps(stamped_at DESC);
`
