/*
Package compare runs several pathfinding algorithms over one shared grid and
collects their step traces and metrics.

A Comparator validates the whole request before any search starts: grid
problems surface as *domain.InvalidGridError, algorithm problems as
*domain.InvalidRequestError. Once validation passes, every run is isolated.
A run that fails or panics records its error in AlgorithmResult.Error and the
remaining runs continue.

	c := compare.New(compare.WithLogger(logger), compare.WithParallel(4))
	res, err := c.Compare(ctx, req)

Results always come back in request order, whether runs execute
sequentially or in parallel.
*/
package compare
