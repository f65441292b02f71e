package help

const ColdstartYAML = `# mindsync Quick Start

stores:
  sqlite: "Single database file (default, next to the binary unless --db is set)"
  vault: "Markdown files with YAML frontmatter under --vault, one per bookmark"

content_types:
  detected: "book, product, article, property, tv_show, tweet, website"
  stages: "pattern (0.9) -> domain (0.7) -> heuristic (0.6 / 0.5); unparseable input is website (0.3)"

commands:
  classify: |
    mindsync classify "https://www.goodreads.com/book/show/5107"

  enrich: |
    mindsync enrich "https://www.zillow.com/homedetails/123"

  save: |
    mindsync save "https://example.com" --title "Example" --tag work --note "read later"

  list: |
    mindsync list --type article --tag go --query golang --limit 20

  get_update_delete: |
    mindsync get <id>
    mindsync update <id> --title "New title" --tag a --tag b
    mindsync delete <id>

  import: |
    mindsync import bookmarks.html

  watch: |
    mindsync --store vault --vault ~/notes/bookmarks watch

  stats: |
    mindsync stats --top 5

output:
  default: "YAML on stdout, logs as JSON on stderr"
  json: "--json"
  fields: "--fields id,title,url"

config:
  file: "--config mindsync.yaml (store, db_path, vault_dir, user_id, seed, detect_language, watch_pattern)"
  env: "MINDSYNC_STORE, MINDSYNC_DB, MINDSYNC_VAULT, MINDSYNC_USER, MINDSYNC_SEED"
`
