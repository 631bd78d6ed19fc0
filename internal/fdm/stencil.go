package fdm

// Laplacian3 is the unscaled 1D second difference u[i-1] - 2u[i] + u[i+1].
func Laplacian3(u []float64, i int) float64 {
	return u[i-1] - 2*u[i] + u[i+1]
}

// Laplacian5 is the unscaled 5-point stencil
// up + down + left + right - 4*center on a row-major plane of width nx.
func Laplacian5(u []float64, nx, i, j int) float64 {
	k := j*nx + i
	return u[k-nx] + u[k-1] - 4*u[k] + u[k+1] + u[k+nx]
}
