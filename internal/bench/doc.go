// Package bench times the reactive runtime and the reconciler.
//
// Two suites run per profile:
//
//   - propagate: one reactive source feeding Width effects, each at the end
//     of a Depth long chain of computeds; every sample is one write.
//   - reconcile: a keyed list of N items patched to a fresh shuffle of the
//     same keys, once per strategy; every sample is one Render.
//
// Samples are collected with tachymeter and reported as a go-pretty table or
// as JSON. Reports can be uploaded to S3 with a Publisher.
//
//	p, _ := bench.LookupProfile("fast")
//	rep, err := bench.New(p, bench.WithSeed(42)).Run(ctx)
//	if err != nil {
//	    return err
//	}
//	rep.Table(os.Stdout)
package bench
