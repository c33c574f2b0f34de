// Package inpaint removes objects from images with a boundary-driven
// content-aware fill.
//
// # Overview
//
// Given an RGBA image and a mask marking the object to remove (typically the
// output of a segmentation model), inpaint reconstructs the masked region from
// the pixels around it:
//
//  1. The mask is resampled to the image size if needed.
//  2. The masked region is filled from its edge inward, one ring of pixels per
//     round. Each pixel takes the mean colour of the known pixels in a 7×7
//     window around it.
//  3. The filled region is smoothed with a 3×3 binomial kernel so the seam
//     between filled and original pixels is less visible.
//
// # Quick Start
//
//	img := inpaint.FromImage(photo)
//	mask := inpaint.NewMaskFromImage(segmentation, inpaint.ChannelRed)
//
//	res, err := inpaint.Remove(ctx, img, mask, inpaint.WithDilate(2))
//	if err != nil {
//	    return err
//	}
//	if !res.FullyFilled {
//	    log.Printf("%d pixels could not be reconstructed", res.Remaining)
//	}
//	out := res.Image.ToImage()
//
// # Masks
//
// A mask pixel is masked when its value exceeds [Threshold] (128). Masks may
// have any size; they are rasterized to the image grid with bilinear
// interpolation unless [WithInterpolation] says otherwise.
//
// # Incomplete fills
//
// The number of fill rounds is bounded (by default max(width, height)). When
// the bound is reached, or when no known pixel exists at all (a fully masked
// image), the remaining pixels keep their original colour and
// [Result.FullyFilled] is false. This is not an error.
//
// # Concurrency
//
// Remove is synchronous. [WithWorkers] spreads the per-round work across
// goroutines; the output is identical for any worker count.
package inpaint
