/*
Package domain contains the core domain models of the Antoine explorer.

It defines the coefficient table, the interactive parameters of a dashboard
recomputation and the results produced by the numeric kernel. This package is kept
pure and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Component: A named chemical component with its extended Antoine coefficients.
  - Table: The immutable, ordered set of components loaded once at startup.
  - Pair: Two components compared for boiling separation.
  - Params: The interactive inputs (temperature bounds, target pressure, selection).
  - Dashboard: Everything a single recomputation produces for rendering.
*/
package domain
