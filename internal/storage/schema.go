package storage

const schema = `
-- The 'topics' table is the root of the quiz corpus.
CREATE TABLE IF NOT EXISTS topics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    topic_id INTEGER,
    name TEXT NOT NULL,

    FOREIGN KEY(topic_id) REFERENCES topics(id)
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER,
    question TEXT NOT NULL,

    FOREIGN KEY(category_id) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS options (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER,
    text TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL DEFAULT 0,

    FOREIGN KEY(question_id) REFERENCES questions(id)
);

CREATE TABLE IF NOT EXISTS question_references (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER,
    title TEXT,
    url TEXT NOT NULL,

    FOREIGN KEY(question_id) REFERENCES questions(id)
);

-- Singleton progress record; the application only ever writes id 1.
CREATE TABLE IF NOT EXISTS game_state (
    id INTEGER PRIMARY KEY,
    current_topic TEXT,
    current_position INTEGER,
    current_score INTEGER,
    target_score INTEGER
);

-- The 'sources' table tracks where question documents come from, either a
-- local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    last_scanned DATETIME
);
`
