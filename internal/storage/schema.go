package storage

const schema = `
-- The 'card_files' table is the registry of card files that belong to
-- the deck, stored relative to the deck directory.
CREATE TABLE IF NOT EXISTS card_files (
    path TEXT PRIMARY KEY
);

-- The 'question_records' table is the whole answer history. 'seq' is the
-- append index within one (card, question kind) sequence; ordering by it
-- reproduces chronological order exactly as recorded.
CREATE TABLE IF NOT EXISTS question_records (
    card_uuid      TEXT NOT NULL,
    translate_from TEXT NOT NULL,
    translate_to   TEXT NOT NULL,
    seq            INTEGER NOT NULL,
    asked_at       DATETIME NOT NULL,
    result         TEXT NOT NULL,

    PRIMARY KEY (card_uuid, translate_from, translate_to, seq)
);
`
