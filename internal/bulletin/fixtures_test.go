package bulletin

import (
	"fmt"
	"strings"
)

const familyHeader = `<tr>
	<td>Family-<br/>Sponsored</td>
	<td>All Chargeability Areas Except Those Listed</td>
	<td>CHINA-mainland born</td>
	<td>INDIA</td>
	<td>MEXICO</td>
	<td>PHILIPPINES</td>
</tr>`

const familyRowsA = `<tr><td>F1</td><td>08NOV15</td><td>08NOV15</td><td>08NOV15</td><td>01APR04</td><td>01MAR12</td></tr>
<tr><td>F2A</td><td>01JAN22</td><td>01JAN22</td><td>01JAN22</td><td>15MAY21</td><td>01JAN22</td></tr>
<tr><td>F2B</td><td>22SEP16</td><td>22SEP16</td><td>22SEP16</td><td>01JUN05</td><td>22OCT11</td></tr>
<tr><td>F3</td><td>01MAR10</td><td>01MAR10</td><td>01MAR10</td><td>15NOV98</td><td>08JUN02</td></tr>
<tr><td>F4</td><td>08JAN08</td><td>08JAN08</td><td>15OCT05</td><td>01AUG01</td><td>22AUG02</td></tr>`

const familyRowsB = `<tr><td>F1</td><td>01SEP17</td><td>01SEP17</td><td>01SEP17</td><td>01APR05</td><td>22APR15</td></tr>
<tr><td>F2A</td><td>C</td><td>C</td><td>C</td><td>C</td><td>C</td></tr>`

const employmentTable = `<table><tbody>
<tr><td>Employment-<br/>based</td><td>All Chargeability Areas</td><td>CHINA</td><td>INDIA</td><td>MEXICO</td><td>PHILIPPINES</td></tr>
<tr><td>1st</td><td>C</td><td>08NOV22</td><td>01JAN22</td><td>C</td><td>C</td></tr>
</tbody></table>`

func table(header, rows string) string {
	return "<table><tbody>\n" + header + "\n" + rows + "\n</tbody></table>"
}

func page(tables ...string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Visa Bulletin</title></head>
<body>
<h1>Visa Bulletin</h1>
<p>A. FINAL ACTION DATES</p>
%s
</body>
</html>`, strings.Join(tables, "\n<p>next</p>\n"))
}

const notFoundPage = `<!DOCTYPE html>
<html><head><title>Error</title></head>
<body><div class="error"><h1>Page Not Found</h1><p>The page you requested could not be found.</p></div></body>
</html>`
