/*
Package ports defines the driven ports (interfaces) of the Antoine explorer.

These interfaces decouple the dashboard service from external implementations,
allowing it to read coefficient tables from various sources and to cache
recomputations in various backends.

# Key Interfaces

  - TableLoader: Responsible for producing the immutable coefficient table
    (TSV file, YAML/JSON catalog, Loam directory or memory).
  - ResultCache: Stores serialized dashboard results keyed by their inputs.
*/
package ports
