package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS habits (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    habit_id             TEXT NOT NULL UNIQUE,
    name                 TEXT NOT NULL,
    category             TEXT NOT NULL,
    completed            INTEGER NOT NULL DEFAULT 0,
    custom               INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id           TEXT NOT NULL,
    mode                 TEXT NOT NULL,
    sender               TEXT NOT NULL,
    body                 TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    saved                INTEGER NOT NULL DEFAULT 0,
    UNIQUE (mode, message_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_mode ON messages(mode, seq);
`
