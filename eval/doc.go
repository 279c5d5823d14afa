// Package eval scores generated referring expressions against the ground
// truth sentences of a dataset.
//
// The metrics follow the MS-COCO caption evaluation toolkit: BLEU-1..4,
// METEOR (exact matching), ROUGE-L and CIDEr-D. Sentences are tokenized with
// a PTB-style tokenizer that lower-cases and drops punctuation.
//
//	ev := eval.NewEvaluator(r, results)
//	out, err := ev.Evaluate(ctx)
//	fmt.Println(out.Eval["CIDEr"])
package eval
