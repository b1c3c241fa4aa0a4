// Package compiler is the host around the zed pipeline. It gives every
// compilation a run ID, consults and fills the cache, times each stage, and
// reports to the logger, metrics collector and tracer.
//
// # Usage
//
//	opts, err := compiler.OptionsFromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	comp := compiler.New(opts).
//	    WithCache(store).
//	    WithLogger(tel.Logger()).
//	    WithMetrics(tel.Metrics()).
//	    WithTracer(tel.Tracer()).
//	    WithVersion(version)
//
//	res, err := comp.Compile(ctx, compiler.Request{
//	    Name:    "spec.zed",
//	    Source:  src,
//	    Dialect: generator.Zed,
//	})
//
// Cache keys hash the source together with the compiler version and every
// option that affects the output.
package compiler
