package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS log_files (
    file_path            TEXT PRIMARY KEY,
    session              TEXT NOT NULL,
    lines                INTEGER NOT NULL,
    skipped_lines        INTEGER NOT NULL,
    dropped_entries      INTEGER NOT NULL,
    unrecognized         INTEGER NOT NULL,
    exported_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS task_summaries (
    file_path            TEXT NOT NULL REFERENCES log_files(file_path) ON DELETE CASCADE,
    task                 TEXT NOT NULL,
    fault                TEXT,
    entries              INTEGER,
    synth_calls          INTEGER,
    completed            INTEGER,
    successes            INTEGER,
    failures             INTEGER,
    outstanding          INTEGER,
    success_rate         REAL,
    total_duration_ms    INTEGER,
    min_duration_secs    REAL,
    max_duration_secs    REAL,
    avg_duration_secs    REAL,
    total_examples       INTEGER,
    avg_examples         REAL,
    default_focus        INTEGER,
    custom_focus         INTEGER,
    focus_ratio          REAL,
    focus_exits          INTEGER,
    example_changes      INTEGER,
    example_includes     INTEGER,
    example_excludes     INTEGER,
    example_resets       INTEGER,
    example_edits        INTEGER,
    stdout_lines         INTEGER,
    stderr_lines         INTEGER,
    unrecognized         INTEGER,
    PRIMARY KEY (file_path, task)
);

CREATE TABLE IF NOT EXISTS synth_calls (
    file_path            TEXT NOT NULL REFERENCES log_files(file_path) ON DELETE CASCADE,
    task                 TEXT NOT NULL,
    seq                  INTEGER NOT NULL,
    call_index           INTEGER NOT NULL,
    source               TEXT NOT NULL,
    line_number          INTEGER NOT NULL,
    example_count        INTEGER NOT NULL,
    started_ms           INTEGER NOT NULL,
    duration_ms          INTEGER NOT NULL,
    exit_code            INTEGER NOT NULL,
    result               TEXT,
    PRIMARY KEY (file_path, task, seq)
);

CREATE TABLE IF NOT EXISTS example_comparison (
    file_path            TEXT NOT NULL REFERENCES log_files(file_path) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    left_task            TEXT NOT NULL,
    left_count           INTEGER,
    right_task           TEXT,
    right_count          INTEGER,
    PRIMARY KEY (file_path, position)
);

CREATE INDEX IF NOT EXISTS idx_calls_task ON synth_calls(task);
CREATE INDEX IF NOT EXISTS idx_summaries_task ON task_summaries(task);
`
