// Package slug turns project names, video filenames and links into
// comparable ASCII slugs and token profiles.
//
// Slugify is the single normalizer used everywhere a name is compared to a
// file: accents are stripped, "&" reads as "e", and every run of
// non-alphanumeric characters becomes one hyphen. Tokenizer splits a slug into
// normalized tokens (synonyms, leading zeros, naive Portuguese singular) and
// drops stopwords; its tables are injectable so configuration can replace the
// built-in Portuguese vocabulary.
package slug
