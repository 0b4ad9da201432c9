// Package janitor deletes temporary upload files left behind by handlers.
//
// Uploaded files of successful requests stay on disk for the handler to move
// or remove. The janitor sweeps the upload directory on a cron schedule and
// removes files created by the body reader that are older than a maximum age:
//
//	j, err := janitor.New(limits.Dir(), janitor.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	g.Go(j.Run(ctx))
//
// Sweep can also be invoked directly, e.g. from a maintenance command.
package janitor
